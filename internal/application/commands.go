package application

type SetAPIKeyCommand struct {
	Value string
}
