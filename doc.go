// Package dwaplatform provides a Go client SDK for registering payment cards
// with the DWAplatform tokenization service.
//
// Bind a configuration once, obtain the shared CardClient, and register
// cards with a completion callback:
//
//	if err := dwaplatform.Initialize(dwaplatform.Configuration{
//	    HostName: "DWAPLATFORM_SANDBOX_HOSTNAME",
//	    Sandbox:  true,
//	}); err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := dwaplatform.GetCardClient()
//	if err != nil {
//	    log.Fatal(err) // ErrConfigurationMissing: Initialize was not called
//	}
//
//	acct := dwaplatform.Account{ClientID: clientID, UserID: userID, AccountID: accountID}
//	req := dwaplatform.RegistrationRequest{
//	    Token:      token,
//	    CardNumber: "1234567812345678",
//	    Expiration: "1122",
//	    CVV:        "123",
//	}
//
//	client.RegisterCard(acct, req, func(card *dwaplatform.Card, err error) {
//	    var replyErr *dwaplatform.APIReplyError
//	    switch {
//	    case errors.As(err, &replyErr):
//	        log.Printf("service refused card: %d %s", replyErr.StatusCode, replyErr.JSON)
//	    case err != nil:
//	        log.Printf("registration failed: %v", err)
//	    default:
//	        log.Printf("registered card %s", card.ID)
//	    }
//	})
//
// Every registration ends in exactly one outcome. Invalid input is reported
// as *ValidationError through the callback before RegisterCard returns and
// before any network access. Network outcomes arrive later on the
// transport's goroutine as a *Card, a *NetworkError or an *APIReplyError.
//
// The HTTP transport can be replaced with WithTransport, which is how tests
// run without a network.
package dwaplatform
