package core

// Secret holds the API token. Its value never appears in String, GoString,
// JSON or text output, so a Configuration can be logged safely:
//
//	token := NewSecret("sk-abc123")
//	fmt.Println(token)         // [REDACTED]
//	token.Expose()             // "sk-abc123"
type Secret struct {
	value string
}

const redacted = "[REDACTED]"

// NewSecret wraps value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String implements fmt.Stringer.
func (s Secret) String() string {
	return redacted
}

// GoString implements fmt.GoStringer.
func (s Secret) GoString() string {
	return "core.Secret{" + redacted + "}"
}

// MarshalJSON always emits the redacted placeholder.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// MarshalText always emits the redacted placeholder, which also covers YAML.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Expose returns the raw value. Only the request builder should need it.
func (s Secret) Expose() string {
	return s.value
}

// IsEmpty reports whether no value was set.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}

// Bearer returns the Authorization header value for the token.
func (s Secret) Bearer() string {
	return "Bearer " + s.value
}
