// meta/meta.go
package meta

// BOARD_SIZE is the default board size.
const BOARD_SIZE = 19

// SEARCH_DEPTH is the default depth for command line searches.
const SEARCH_DEPTH = 3

// MAX_MOVES caps the length of a self-play game.
const MAX_MOVES = BOARD_SIZE * BOARD_SIZE

// OPENING_MOVES is the default number of random moves before self-play
// agents take over.
const OPENING_MOVES = 2
