package sep7

// Client identification sent with outbound requests (stellar.toml fetches).
const (
	ClientName    = "sep7-go"
	ClientVersion = "1.0.0"
)

// Client identification header names.
const (
	HeaderClientName    = "X-Client-Name"
	HeaderClientVersion = "X-Client-Version"
)
