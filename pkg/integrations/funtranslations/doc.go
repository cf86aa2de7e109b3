// Package funtranslations provides an HTTP client for the FunTranslations API.
//
// # Usage
//
//	client := funtranslations.NewClient(funtranslations.DefaultBaseURL, 10*time.Second)
//	tr, err := client.Translate(ctx, "yoda", "It was created by a scientist.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tr.Translated)
//
// # Response Handling
//
// The upstream answers with success.total and a contents object. The call
// succeeds only when total is positive and contents carries translated,
// text and translation. A 200 with total 0 is an internal [Error].
package funtranslations
