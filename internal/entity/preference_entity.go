package entity

// Preferences are per-user UI toggles kept next to the session collection.
type Preferences struct {
	Theme          string `json:"theme"`
	ActiveMode     bool   `json:"active_mode"`
	SimulationMode bool   `json:"simulation_mode"`
}
