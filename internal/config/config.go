package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // secret used to sign session tokens
    TokenTTLHour int    // session token time-to-live in hours
    BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  There is no
// fallback for the signing secret: a deployment without JWT_SECRET refuses
// to start instead of silently signing tokens with a default literal.
func Load() Config {
    return Config{
        Env:          must("APP_ENV"),                    // environment (dev/test/prod)
        Port:         must("APP_PORT"),                   // port to bind the HTTP server
        DBUser:       must("DB_USER"),                    // database user
        DBPass:       os.Getenv("DB_PASS"),               // database password (empty allowed)
        DBHost:       must("DB_HOST"),                    // database host
        DBPort:       must("DB_PORT"),                    // database port
        DBName:       must("DB_NAME"),                    // database name
        JWTSecret:    must("JWT_SECRET"),                 // secret used for signing tokens
        TokenTTLHour: envIntDefault("TOKEN_TTL_HOURS", 24), // session tokens live one day by default
        BcryptCost:   envIntDefault("BCRYPT_COST", 10),   // bcrypt cost factor
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// envIntDefault reads an optional integer environment variable, falling
// back to the provided default when the variable is unset or malformed.
func envIntDefault(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil || n <= 0 {
        log.Printf("invalid int for %s: %q, using default %d", key, s, def)
        return def
    }
    return n
}
