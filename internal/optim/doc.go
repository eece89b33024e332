// Package optim searches the stiffness and damping sliders for the setting
// that minimizes an objective, typically a step response metric from
// package analysis.
package optim
