package entity

// Códigos de estado persistidos en todas las tablas ("A" activo, "I" inactivo).
const (
	StatusActive   = "A"
	StatusInactive = "I"
)

// IsValidStatus indica si el valor es uno de los dos códigos permitidos.
func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
