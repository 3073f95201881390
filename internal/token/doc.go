// Package token defines the lexemes of the Decaf language.
package token
