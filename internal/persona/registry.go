package persona

import (
	"github.com/mavropro/mavro-api/internal/models"
	"go.uber.org/zap"
)

// Registry holds the fixed set of business-archetype personas. The set is
// closed; there is no runtime registration path.
type Registry struct {
	personas map[models.PersonaKey]models.Persona
	order    []models.PersonaKey
	logger   *zap.Logger
}

// NewRegistry creates the registry with the built-in persona table.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		personas: make(map[models.PersonaKey]models.Persona),
		logger:   logger,
	}
	for _, p := range builtinPersonas {
		r.personas[p.Key] = p
		r.order = append(r.order, p.Key)
	}
	return r
}

var builtinPersonas = []models.Persona{
	{
		Key:            models.PersonaKemar,
		DisplayName:    "Kemar Hinds",
		AvatarInitials: "KH",
		ThemeColor:     "#8B5CF6",
		IndustryTag:    "Speaking & Leadership",
		Role:           "Keynote Speaker",
		BusinessName:   "Thought Leadership",
	},
	{
		Key:            models.PersonaKaren,
		DisplayName:    "Karen Thompson",
		AvatarInitials: "KT",
		ThemeColor:     "#22C55E",
		IndustryTag:    "Real Estate",
		Role:           "Real Estate Agent",
		BusinessName:   "Premium Properties",
	},
	{
		Key:            models.PersonaSarah,
		DisplayName:    "Sarah Martinez",
		AvatarInitials: "SM",
		ThemeColor:     "#EC4899",
		IndustryTag:    "MedSpa & Wellness",
		Role:           "MedSpa Owner",
		BusinessName:   "Glow Wellness",
	},
	{
		Key:            models.PersonaMarco,
		DisplayName:    "Marco Romano",
		AvatarInitials: "MR",
		ThemeColor:     "#EF4444",
		IndustryTag:    "Food & Beverage",
		Role:           "Restaurant Owner",
		BusinessName:   "Bella Vista",
	},
	{
		Key:            models.PersonaAlex,
		DisplayName:    "Alex Chen",
		AvatarInitials: "AC",
		ThemeColor:     "#3B82F6",
		IndustryTag:    "Fitness & Wellness",
		Role:           "Fitness Coach",
		BusinessName:   "Elite Fitness",
	},
	{
		Key:            models.PersonaDavid,
		DisplayName:    "David Wilson",
		AvatarInitials: "DW",
		ThemeColor:     "#A855F7",
		IndustryTag:    "Automotive",
		Role:           "Auto Dealer",
		BusinessName:   "Wilson Motors",
	},
}

// All returns every persona in stable order.
func (r *Registry) All() []models.Persona {
	out := make([]models.Persona, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.personas[key])
	}
	return out
}

// Lookup resolves a persona key. Unknown keys resolve to the default persona
// and fallback is true so callers can surface the substitution.
func (r *Registry) Lookup(key models.PersonaKey) (p models.Persona, fallback bool) {
	if p, ok := r.personas[key]; ok {
		return p, false
	}
	r.logger.Warn("persona_fallback",
		zap.String("requested", string(key)),
		zap.String("resolved", string(models.DefaultPersona)))
	return r.personas[models.DefaultPersona], true
}

// IsKnown reports whether key is a registered persona.
func (r *Registry) IsKnown(key models.PersonaKey) bool {
	_, ok := r.personas[key]
	return ok
}

// Suggestions returns the persona-specific quick-reply suggestions for chat.
func (r *Registry) Suggestions(key models.PersonaKey) []string {
	p, _ := r.Lookup(key)
	if s, ok := chatSuggestions[p.Key]; ok {
		out := make([]string, len(s))
		copy(out, s)
		return out
	}
	return nil
}

var chatSuggestions = map[models.PersonaKey][]string{
	models.PersonaKemar: {
		"Draft a LinkedIn post about my next keynote",
		"What speaking topics are trending this quarter?",
		"Help me follow up with event organizers",
	},
	models.PersonaKaren: {
		"Write a new listing announcement",
		"Which leads should I call first today?",
		"Suggest an open house promotion",
	},
	models.PersonaSarah: {
		"Create a seasonal treatment promotion",
		"How do I respond to our latest review?",
		"Plan this week's Instagram content",
	},
	models.PersonaMarco: {
		"Promote this weekend's dinner special",
		"Draft a reply to a 3-star review",
		"Ideas for a loyalty campaign",
	},
	models.PersonaAlex: {
		"Plan a new client challenge campaign",
		"Write a transformation story post",
		"Which members are at risk of churning?",
	},
	models.PersonaDavid: {
		"Announce this month's trade-in event",
		"Draft a follow-up for test drive leads",
		"Compare my ad performance by platform",
	},
}
