package di

import (
	"go.uber.org/dig"
)

// Container is the global dependency injection container.
var Container *dig.Container

// InitContainer creates the container.
func InitContainer() *dig.Container {
	Container = dig.New()
	return Container
}

// GetContainer returns the container instance.
func GetContainer() *dig.Container {
	return Container
}

// Invoke wraps dig.Invoke on the global container.
func Invoke(function interface{}, opts ...dig.InvokeOption) error {
	return Container.Invoke(function, opts...)
}

// Provide wraps dig.Provide on the global container.
func Provide(constructor interface{}, opts ...dig.ProvideOption) error {
	return Container.Provide(constructor, opts...)
}
