package editor

type AddFieldDTO struct {
	Type string `json:"type" binding:"required"`
}

type SelectFieldDTO struct {
	ID string `json:"id" binding:"required"`
}

type FieldPropertyDTO struct {
	Key   string `json:"key"   binding:"required"`
	Value any    `json:"value"`
}

type OptionPropertyDTO struct {
	Key   string `json:"key"   binding:"required"`
	Value string `json:"value"`
}

type FormPropertyDTO struct {
	Key   string `json:"key"   binding:"required"`
	Value string `json:"value"`
}
