// Command basecamp is the project CLI.
//
//	basecamp serve         # start the server on :8080
//	basecamp route:list    # list registered routes
//	basecamp task:list     # list build tasks
//	basecamp mocha-test    # run test/*_test.go, write test/mocha-report.xml
//
// mocha-test exits non-zero when any test fails.
package main
