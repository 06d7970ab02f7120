package sep7

// Network passphrases accepted in the network_passphrase parameter.
const (
	NetworkPublic    = "Public Global Stellar Network ; September 2015"
	NetworkTestnet   = "Test SDF Network ; September 2015"
	NetworkFuturenet = "Test SDF Future Network ; October 2022"
)

// NetworkName returns a short name for a known network passphrase, or ""
// for an unrecognized one. An absent network_passphrase parameter means the
// public network.
func NetworkName(passphrase string) string {
	switch passphrase {
	case NetworkPublic, "":
		return "public"
	case NetworkTestnet:
		return "testnet"
	case NetworkFuturenet:
		return "futurenet"
	default:
		return ""
	}
}
