/*
Package title generates "さしずめ俺は…" titles: a humorous Japanese title, a
pair of emoji matched to the keyword's topic, a caption, hashtags and a card
palette.

Generation is deterministic. A (keyword, variant) pair is hashed into a seed,
and a single Mulberry32 RNG seeded from it drives every choice, so the same
pair produces the same Result on every call and on every platform, including
browser clients that share the same catalog. Changing the variant is how a user
asks for "another one" without changing the keyword.

The package also carries the shareable-reference helpers used by clients:
permalink encoding and decoding, hydration of a Result from a permalink, and
share texts.
*/
package title
