package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/debtwise/debtwise-backend/infra/cloudrun"
	"github.com/debtwise/debtwise-backend/infra/docker"
	"github.com/debtwise/debtwise-backend/infra/firestore"
	"github.com/debtwise/debtwise-backend/infra/identity"
	"github.com/debtwise/debtwise-backend/infra/kms"
	"github.com/debtwise/debtwise-backend/infra/provider"
	"github.com/debtwise/debtwise-backend/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity service to allow using firebase
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the project
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// enable vertex for the assistant
		err = vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		// kms key for counterparty contact encryption
		_, err = kms.SetupKMS(ctx, prov)
		if err != nil {
			return err
		}
		keyID, err := kms.CreateKey(ctx, prov, "debtwise", "contact")
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, keyID, ident, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
