package domain

// KeyPrefix namespaces every key songrec writes to the KV store.
const KeyPrefix = "songrec:"
