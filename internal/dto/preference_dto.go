package dto

type UpdatePreferencesRequest struct {
	Theme          *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	ActiveMode     *bool   `json:"active_mode,omitempty"`
	SimulationMode *bool   `json:"simulation_mode,omitempty"`
}
