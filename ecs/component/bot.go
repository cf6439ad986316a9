package component

// Bot drives an entity's Input from a tengo script instead of devices.
type Bot struct {
	Script string
}

var BotComponent = NewComponent[Bot]()
