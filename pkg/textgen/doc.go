// Package textgen is the generation collaborator called after the gate
// admits a request. It exposes the minimal Generator interface and an
// OpenAI-compatible chat-completions client.
package textgen
