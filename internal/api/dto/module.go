package dto

type ModuleDTO struct {
	ID          uint64 `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	AccentColor string `json:"accent_color"`
	Enabled     bool   `json:"enabled"`
	SortOrder   int    `json:"sort_order"`
	Category    string `json:"category"`
}

type CreateModuleDTO struct {
	Slug        string `json:"slug" validate:"omitempty,max=64"`
	Name        string `json:"name" validate:"required,max=64"`
	Icon        string `json:"icon" validate:"max=64"`
	AccentColor string `json:"accent_color" validate:"max=16"`
	Enabled     *bool  `json:"enabled"`
	Category    string `json:"category" validate:"omitempty,oneof=work personal"`
}

type UpdateModuleDTO struct {
	Name        *string `json:"name" validate:"omitempty,max=64"`
	Icon        *string `json:"icon" validate:"omitempty,max=64"`
	AccentColor *string `json:"accent_color" validate:"omitempty,max=16"`
	Enabled     *bool   `json:"enabled"`
	Category    *string `json:"category" validate:"omitempty,oneof=work personal"`
}
