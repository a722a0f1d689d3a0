package entity

// Home es la tabla de referencia de hogares. No participa de la aritmética
// del libro de stock; los consumos solo la referencian.
type Home struct {
	ID      int64
	Names   string
	Address string
	Status  string
}
