package domain

// Move describes a requested piece relocation. It is a value type and is
// never retained after application; the server keeps no move log.
type Move struct {
	FromX int `json:"from_x"`
	FromY int `json:"from_y"`
	ToX   int `json:"to_x"`
	ToY   int `json:"to_y"`
}
