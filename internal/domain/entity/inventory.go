package entity

// Inventory representa el stock vivo de un producto en la despensa compartida
// (tabla inventory_consumption). CurrentStock solo cambia como efecto de una
// Transaction validada; nunca puede quedar negativo.
type Inventory struct {
	ID           int64
	ProductID    int64
	InitialStock int
	CurrentStock int
	Status       string
}
