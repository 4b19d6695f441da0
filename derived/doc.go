// Package derived builds the registry of computed values the chat surface
// reads: message counts and filters, streaming status, send readiness,
// runtime capability lookups, and the summaries built on top of them.
//
// Every value is a store.Derived over the conversation, runtime and UI
// stores, so the registry inherits the store package's guarantees: values
// read through Get are always current, and each value recomputes at most
// once per base-store mutation even where dependencies form diamonds
// (CanSend, ConversationSummary, AppState).
package derived
