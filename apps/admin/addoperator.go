package main

import (
	"context"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/operator"
)

// addOperator creates or re-activates an operator account.
func (cli *commandLine) addOperator(email, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	op, err := cli.opSvc.GetByEmail(ctx, email)
	if err != nil {
		if err != operator.ErrNotFound {
			return err
		}
		_, err = cli.opSvc.Create(ctx, operator.NewOperator{Email: email, Password: pwd})
		return err
	}

	op.IsActive = true
	if err = op.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.opSvc.Update(ctx, op)
	return err
}
