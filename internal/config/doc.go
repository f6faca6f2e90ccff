// Package config loads phasekit settings from TOML.
//
// Lookup order when no explicit path is given: ~/.config/phasekit/config.toml
// then ./phasekit.toml. A missing file yields the defaults. Paths beginning
// with ~ are expanded and made absolute during normalization.
package config
