package config

// PlaceholderIdentityKey is the demo key shipped in sample environments. It
// never counts as a configured identity provider.
const PlaceholderIdentityKey = "pk_test_demo_key_for_development"

// Settings is the immutable view of the switches the data layer consults on
// every call. The zero value has the backend disabled and no identity
// provider.
type Settings struct {
	backendEnabled bool
	identityKey    string
	devUserID      string
}

// NewSettings is used by tests and embedders that do not go through
// LoadConfig.
func NewSettings(backendEnabled bool, identityKey, devUserID string) Settings {
	return Settings{backendEnabled: backendEnabled, identityKey: identityKey, devUserID: devUserID}
}

// BackendEnabled is the feature gate: false means no backend traffic at all.
func (s Settings) BackendEnabled() bool {
	return s.backendEnabled
}

func (s Settings) IdentityConfigured() bool {
	return s.identityKey != "" && s.identityKey != PlaceholderIdentityKey
}

func (s Settings) IdentityKey() string {
	return s.identityKey
}

// DevUserID is the explicit development identity, empty when none.
func (s Settings) DevUserID() string {
	return s.devUserID
}
