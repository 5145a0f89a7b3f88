package main

// Exit codes shared by the citegraph commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file or flags)
	ExitRateLimited = 3 // Crawl aborted because the API kept throttling us
)
