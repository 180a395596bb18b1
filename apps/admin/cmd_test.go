package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/adxsetup/core/operator"
	inmemdb "github.com/trezcool/adxsetup/storage/database/inmem"
)

func setup(t *testing.T) (*commandLine, *operator.Service) {
	t.Helper()

	opSvc := operator.NewService(inmemdb.NewOperatorRepository(inmemdb.Open()))
	return &commandLine{
		db:    &sqlx.DB{},
		opSvc: opSvc,
	}, opSvc
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	migrateRunFunc = func(db *sql.DB, command string) error {
		switch command {
		case "up", "down", "version": // pass
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_addOperator(t *testing.T) {
	cli, opSvc := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addoperator"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"addoperator", "-email", "boss@test.cd"}, wantErr: errHelp},
		{name: "create", args: []string{"addoperator", "-email", "boss@test.cd"}, extra: extra{pwd: "lol"}},
		{name: "re-create resets password", args: []string{"addoperator", "-email", "boss@test.cd"}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				op, err := opSvc.GetByEmail(context.Background(), "boss@test.cd")
				if err != nil {
					t.Fatalf("GetByEmail() failed, %v", err)
				}
				if pwd := tt.extra.(extra).pwd; op.CheckPassword(pwd) != nil {
					t.Errorf("password %q not set", pwd)
				}
				if !op.IsActive {
					t.Error("operator not active")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli, opSvc := setup(t)

	op, err := opSvc.Create(context.Background(), operator.NewOperator{Email: "awe@test.cd", Password: "mdr"})
	if err != nil {
		t.Fatalf("Create() failed, %v", err)
	}

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "operator not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: operator.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", op.Email}, extra: extra{pwd: "lol"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := opSvc.GetByEmail(context.Background(), op.Email)
				if err != nil {
					t.Fatalf("GetByEmail() failed, %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, op.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
