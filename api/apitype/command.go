package apitype

// Command is any payload published on a topic.
type Command interface{}
