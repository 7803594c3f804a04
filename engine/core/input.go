package core

// Input tracks key state between fixed updates.
type Input struct {
	keys           map[Key]bool
	pressed        map[Key]bool
	mouseX, mouseY float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}, pressed: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Down && !in.keys[e.Key] {
			in.pressed[e.Key] = true
		}
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsKeyDown(k Key) bool { return in.keys[k] }

// WasPressed reports a key going down since the last EndUpdate.
func (in *Input) WasPressed(k Key) bool { return in.pressed[k] }

// EndUpdate clears edge state; Run calls it after each fixed update.
func (in *Input) EndUpdate() {
	for k := range in.pressed {
		delete(in.pressed, k)
	}
}

func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }
