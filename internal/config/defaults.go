package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.MongoURI == "" {
		cfg.Storage.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.Storage.Database == "" {
		cfg.Storage.Database = "insightstack"
	}
	if cfg.Storage.Collection == "" {
		cfg.Storage.Collection = "channel_insights"
	}
	if cfg.Storage.FavoritesPath == "" {
		cfg.Storage.FavoritesPath = "/usr/local/var/insightstack/favorites.db"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 9
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.MaxSuggestions == 0 {
		cfg.Search.MaxSuggestions = 5
	}
	if cfg.Search.CacheTTLMinutes == 0 {
		cfg.Search.CacheTTLMinutes = 60
	}
	if cfg.Search.CacheCapacity == 0 {
		cfg.Search.CacheCapacity = 100
	}
}
