// Package domain holds the shared contracts of the search core:
// embedding and text-generation provider interfaces, error taxonomy,
// and the storage key namespace.
package domain

// KeyPrefix namespaces all keys written to the store.
const KeyPrefix = "tindahan:"

// DefaultVectorDim is the embedding dimension used when the vectorizer
// config does not specify one (all-MiniLM class models).
const DefaultVectorDim = 384
