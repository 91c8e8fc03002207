// Package rider models rider profiles and the append-only earnings ledger.
package rider
