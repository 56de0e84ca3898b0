package alarm

// Action is run synchronously when its trigger fires.
type Action interface {
	Run()
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func()

// Run calls f().
func (f ActionFunc) Run() {
	f()
}
