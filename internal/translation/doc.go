// Package translation turns a batch of spreadsheet cells into a single LLM
// completion request and parses the completion back into one translation per
// cell. Network access sits behind the Completer interface so that prompt
// building and response parsing can be tested offline.
package translation
