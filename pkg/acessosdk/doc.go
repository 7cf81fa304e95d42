/*
Package acessosdk is a client for the access control service.

# SDKClient vs Session

An SDKClient covers the unauthenticated health endpoints and creates
Sessions. A Session attaches a bearer token from a TokenSource to every
call:

	client := acessosdk.NewSDKClient("https://acesso.example.com")
	health, err := client.GetReadiness(ctx)

	session := client.NewSession(acessosdk.StaticToken(accessToken))
	perms, err := session.MyPermissions(ctx, "pwa")
	if perms.Has("ponto:registrar", "write") {
		// show the punch button
	}

	menu, err := session.MyMenu(ctx, "dashboard", "/dashboard/gruas")

	decision, err := session.Guard(ctx, acessosdk.GuardRequest{Route: "/dashboard/financeiro"})
	switch decision.Kind {
	case acessosdk.DecisionRedirect:
		// navigate to decision.CanonicalRoute
	case acessosdk.DecisionDeny:
		// render the forbidden page
	}

# Errors

Non-2xx responses come back as *APIError:

	_, err := session.ListRoles(ctx)
	if acessosdk.IsCode(err, acessosdk.ErrorCodeInsufficientScope) {
		// caller lacks perfis:visualizar
	}
*/
package acessosdk
