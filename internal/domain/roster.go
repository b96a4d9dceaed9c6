package domain

import "fmt"

const Challenge = `Design a 9-course tasting menu for a Michelin-starred restaurant's grand reopening after renovation.
Theme: "Journey Through Seasons" - each course represents a different season and time of day.

Required courses:
1. Spring Dawn Amuse-Bouche
2. Spring Morning Appetizer
3. Summer Noon Soup
4. Summer Afternoon Salad
5. Autumn Evening Fish Course
6. Autumn Night Meat Course
7. Winter Midnight Palate Cleanser
8. Winter Pre-Dawn Cheese Course
9. Spring Sunrise Dessert

Each chef must contribute their specialty to multiple courses. The menu must tell a cohesive story and use advanced techniques. Budget is unlimited but every ingredient must serve the seasonal narrative.`

func DefaultCourses() []string {
	return []string{
		"Spring Dawn Amuse-Bouche",
		"Spring Morning Appetizer",
		"Summer Noon Soup",
		"Summer Afternoon Salad",
		"Autumn Evening Fish",
		"Autumn Night Meat",
		"Winter Midnight Cleanser",
		"Winter Pre-Dawn Cheese",
		"Spring Sunrise Dessert",
	}
}

func DefaultRoster() []AgentProfile {
	return []AgentProfile{
		{
			ID:           "pasta",
			Name:         "Agent 1 Chef Pasta",
			Specialty:    "Italian & Mediterranean cuisine",
			Ingredients:  []string{"tomatoes", "basil", "olive oil", "garlic", "parmesan", "pasta", "mozzarella", "oregano", "pine nuts", "balsamic"},
			ModelRef:     "anthropic/claude-3.5-sonnet",
			SystemPrompt: "You are Chef Pasta. Start with 3-5 word sentences. Gradually use symbols and shortcuts like: 🍝 for pasta, T for tomato, + for add, >> for mix. Create your own code language with symbols.",
			Temperature:  0.9,
			Color:        "135",
		},
		{
			ID:           "spice",
			Name:         "Agent 2 Chef Spice",
			Specialty:    "Asian & Indian fusion",
			Ingredients:  []string{"ginger", "soy sauce", "sesame oil", "chili", "turmeric", "cardamom", "coconut milk", "lemongrass", "curry leaves", "rice"},
			ModelRef:     "google/gemini-flash-1.5",
			SystemPrompt: "You are Chef Spice. Start with 3-5 word sentences. Gradually use symbols like: 🌶️ for heat, S for spice, ++ for very hot, @ for location. Develop creative symbol shortcuts.",
			Temperature:  1.0,
			Color:        "220",
		},
		{
			ID:           "sweet",
			Name:         "Agent 3 Chef Sweet",
			Specialty:    "Pastry & desserts",
			Ingredients:  []string{"flour", "sugar", "butter", "eggs", "vanilla", "chocolate", "cream", "berries", "honey", "nuts"},
			ModelRef:     "meta-llama/llama-3.1-8b-instruct",
			SystemPrompt: "You are Chef Sweet. Start with 3-5 word sentences. Gradually use symbols like: 🍰 for cake, S for sugar, ✓ for done, → for next step. Create symbol-based cooking language.",
			Temperature:  1.1,
			Color:        "78",
		},
	}
}

// ValidateRoster rejects empty rosters and duplicate agent ids.
func ValidateRoster(profiles []AgentProfile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("%w: no agents configured", ErrInvalidRoster)
	}

	seen := make(map[AgentID]struct{}, len(profiles))
	for _, profile := range profiles {
		if profile.ID == "" {
			return fmt.Errorf("%w: agent %q has no id", ErrInvalidRoster, profile.Name)
		}
		if _, ok := seen[profile.ID]; ok {
			return fmt.Errorf("%w: duplicate agent id %q", ErrInvalidRoster, profile.ID)
		}
		seen[profile.ID] = struct{}{}
	}

	return nil
}
