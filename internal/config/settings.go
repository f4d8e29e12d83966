package config

import "errors"

// Settings holds the values a process may override through the environment.
type Settings struct {
	Seed                      uint64  // RNG seed; 0 picks one from the clock
	WeaponPowerUpEvery        int     // Weapon power-up every N waves; 0 disables
	PlacementMaxAttempts      int     // Rejection-sampling cap for spawn placement
	FragmentMinPlayerDistance float64 // Fragments never appear closer than this to the player
	Autopilot                 bool    // Drive the player with the built-in autopilot
	LogLevel                  string
	LogFile                   string
}

// DefaultSettings returns the built-in tuning.
func DefaultSettings() Settings {
	return Settings{
		WeaponPowerUpEvery:        DefaultWeaponPowerUpEvery,
		PlacementMaxAttempts:      DefaultPlacementMaxAttempts,
		FragmentMinPlayerDistance: DefaultFragmentMinPlayerDistance,
		LogLevel:                  "info",
	}
}

// Load reads Settings from the environment on top of DefaultSettings.
// Every malformed variable is reported; the returned Settings keep defaults for those.
func Load() (Settings, error) {
	s := DefaultSettings()
	var errs []error

	var err error
	if s.Seed, err = GetEnvUint64("GAME_SEED", s.Seed); err != nil {
		errs = append(errs, err)
	}
	if s.WeaponPowerUpEvery, err = GetEnvInt("WEAPON_POWER_UP_EVERY", s.WeaponPowerUpEvery); err != nil {
		errs = append(errs, err)
	}
	if s.PlacementMaxAttempts, err = GetEnvInt("PLACEMENT_MAX_ATTEMPTS", s.PlacementMaxAttempts); err != nil {
		errs = append(errs, err)
	}
	if s.FragmentMinPlayerDistance, err = GetEnvFloat("FRAGMENT_MIN_PLAYER_DISTANCE", s.FragmentMinPlayerDistance); err != nil {
		errs = append(errs, err)
	}
	if s.Autopilot, err = GetEnvBool("AUTOPILOT", s.Autopilot); err != nil {
		errs = append(errs, err)
	}
	if v := GetEnv("LOG_LEVEL", ""); v != "" {
		s.LogLevel = v
	}
	s.LogFile = GetEnv("LOG_FILE", s.LogFile)

	if s.WeaponPowerUpEvery < 0 {
		errs = append(errs, errors.New("WEAPON_POWER_UP_EVERY: must not be negative"))
		s.WeaponPowerUpEvery = DefaultWeaponPowerUpEvery
	}
	if s.PlacementMaxAttempts < 1 {
		errs = append(errs, errors.New("PLACEMENT_MAX_ATTEMPTS: must be at least 1"))
		s.PlacementMaxAttempts = DefaultPlacementMaxAttempts
	}

	return s, errors.Join(errs...)
}
