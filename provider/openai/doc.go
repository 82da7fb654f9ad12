// Package openai adapts the OpenAI chat completions API to the provider
// contract. The adapter is stateless apart from the active system prompt;
// it imposes no retry policy of its own.
package openai
