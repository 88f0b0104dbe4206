package models

// PersonaKey identifies one of the fixed business-archetype personas.
type PersonaKey string

const (
	PersonaKemar PersonaKey = "kemar"
	PersonaKaren PersonaKey = "karen"
	PersonaSarah PersonaKey = "sarah"
	PersonaMarco PersonaKey = "marco"
	PersonaAlex  PersonaKey = "alex"
	PersonaDavid PersonaKey = "david"
)

// DefaultPersona is the persona used when an unknown key is requested.
const DefaultPersona = PersonaKemar

// Persona holds display metadata for a business archetype.
type Persona struct {
	Key            PersonaKey `json:"key"`
	DisplayName    string     `json:"display_name"`
	AvatarInitials string     `json:"avatar_initials"`
	ThemeColor     string     `json:"theme_color"`
	IndustryTag    string     `json:"industry_tag"`
	Role           string     `json:"role"`
	BusinessName   string     `json:"business_name"`
}
