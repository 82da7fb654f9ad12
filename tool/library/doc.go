// Package library ships a small set of concrete tools: web requests, page
// scraping and file writing. They are leaves outside the core contract;
// anything that satisfies tool.Definition can replace them.
package library
