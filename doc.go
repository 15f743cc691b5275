// Package termc implements the core of a complex-number calculator.
//
// The syntax of expressions is the usual infix notation with + - * / ^,
// parentheses, and calls like pow(2, 10). Multiplication can be implied by
// writing a number or a closing parenthesis directly against what follows,
// so "5+3i" is 5+3*i and "2pi" is 2*pi, while "3 i" is an error. "-2^2" is
// the same as "-(2^2)", and "2^3^2" is "2^(3^2)".
//
// A line can also define a constant, as in "c = 5*pi/4", or a function, as
// in "f(x, y) = x^2 + y". Definitions live in a Symbols table and take
// precedence over the built-in constants e, pi, and i and the built-in
// functions. A Session ties parsing, evaluation, and definitions together
// the way an interactive calculator uses them.
//
// Every error caused by bad input is a *Diagnostic pointing at the part of
// the line responsible, which Render displays with a caret underneath.
package termc
