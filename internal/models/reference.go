package models

// Справочные таблицы: читаются каталогом, наполняются из configs/reference.yaml.

type BodyType struct {
	ID       int64  `json:"id" yaml:"id"`
	TypeName string `json:"type_name" yaml:"type_name"`
}

type CarClass struct {
	ID        int64  `json:"id" yaml:"id"`
	ClassName string `json:"class_name" yaml:"class_name"`
}

type FuelType struct {
	ID       int64  `json:"id" yaml:"id"`
	FuelType string `json:"fuel_type" yaml:"fuel_type"`
}

// Status is the availability flag reference. Exactly two rows exist in
// practice: available=true and available=false.
type Status struct {
	ID        int64 `json:"id" yaml:"id"`
	Available bool  `json:"status" yaml:"status"`
}

// ReferenceData groups the seed rows loaded from the reference config file.
type ReferenceData struct {
	BodyTypes []BodyType `yaml:"body_types"`
	Classes   []CarClass `yaml:"classes"`
	FuelTypes []FuelType `yaml:"fuel_types"`
	Statuses  []Status   `yaml:"statuses"`
}
