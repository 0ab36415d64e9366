package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort=%s", c.AppPort)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("IdempTTLSecs=%d", c.IdempTTLSecs)
	}
	if c.WorkflowStrict {
		t.Fatal("WorkflowStrict must default off")
	}
	if c.WebhookMaxAttempt != 5 {
		t.Fatalf("WebhookMaxAttempt=%d", c.WebhookMaxAttempt)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("WORKFLOW_STRICT", "true")
	t.Setenv("JWT_TTL_HOURS", "48")
	c := Load()
	if c.AppPort != "9090" {
		t.Fatalf("AppPort=%s", c.AppPort)
	}
	if !c.WorkflowStrict {
		t.Fatal("WORKFLOW_STRICT=true not applied")
	}
	if c.JWTTTLHours != 48 {
		t.Fatalf("JWTTTLHours=%d", c.JWTTTLHours)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	c := Load()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Fatal("want error for invalid port")
	}

	c = Load()
	c.JWTSecret = ""
	if err := c.Validate(); err == nil {
		t.Fatal("want error for missing JWT secret")
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d"}
	want := "u:p@tcp(h:3306)/d?multiStatements=true&parseTime=true&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("dsn=%s", got)
	}
}
