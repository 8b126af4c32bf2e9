package entity

// Store is a tenant of the system. The store list is fixed.
type Store struct {
	ID   string
	Name string
}

var stores = []Store{
	{ID: "paris6", Name: "Paris6"},
	{ID: "xian", Name: "Xian"},
	{ID: "stella", Name: "Stella"},
	{ID: "new-hakata", Name: "New Hakata"},
	{ID: "jardim-secreto", Name: "Jardim Secreto"},
	{ID: "mestre-cuca", Name: "Mestre Cuca"},
	{ID: "food-zone", Name: "Food Zone"},
}

// Stores returns a copy of the store list.
func Stores() []Store {
	out := make([]Store, len(stores))
	copy(out, stores)
	return out
}

// FindStore looks a store up by ID.
func FindStore(id string) (Store, bool) {
	for _, s := range stores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}
