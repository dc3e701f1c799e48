// Package game holds the scoring and handicapping engines: course and team
// handicap math, stroke allocation, net scoring, match-play state, skins, and
// the TILT modified-Stableford game.
//
// Everything in this package is a pure function of its inputs. The engines
// never touch storage or the network; the API layer loads holes, policy, and
// gross scores, calls in, and serializes what comes back. Results are always
// rebuilt from the full score history, so correcting an earlier hole's score
// and recomputing can never drift from the truth.
package game
