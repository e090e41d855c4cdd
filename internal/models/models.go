package models

// All returns every persisted model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Skill{},
		&InternSkill{},
		&Project{},
		&ProjectSkill{},
		&InternProject{},
		&CompletedProject{},
	}
}
