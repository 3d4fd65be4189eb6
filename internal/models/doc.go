// Package models lists the OpenAI models usable for batch translation.
package models
