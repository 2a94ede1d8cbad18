// Package translation converts menu text between languages. The default
// backend is the Google Cloud Translation v3 API, which takes a whole
// menu's strings in a single batched request; OpenAI and Gemini backends
// exist for setups without a Google Cloud project. All backends implement
// the same Translator interface and can be wrapped in a circuit breaker
// so a failing API stops being hammered mid-run.
package translation
