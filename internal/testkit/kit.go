package testkit

// TestKit memoizes one generated marketplace and seeds it to disk on
// demand. Package tests and the dev CLI share it so every consumer of a
// given config sees the same data.
type TestKit struct {
	Config OlistGeneratorConfig

	data *SyntheticData
}

// NewTestKit creates a test kit with the default generator config
func NewTestKit() *TestKit {
	return NewTestKitWithConfig(DefaultOlistConfig())
}

// NewTestKitWithConfig creates a test kit with a custom generator config
func NewTestKitWithConfig(config OlistGeneratorConfig) *TestKit {
	return &TestKit{Config: config}
}

// Data generates the synthetic marketplace once and memoizes it.
func (k *TestKit) Data() *SyntheticData {
	if k.data == nil {
		k.data = NewOlistGenerator(k.Config).Generate()
	}
	return k.data
}

// SeedDir writes the eight raw extracts into dir.
func (k *TestKit) SeedDir(dir string) error {
	return k.Data().WriteExtracts(dir)
}

// SeedEnriched writes the pre-joined sentiment fact file to path.
func (k *TestKit) SeedEnriched(path string) error {
	return k.Data().WriteEnriched(path)
}
