package a

import "errors"

var errEmpty = errors.New("empty login")

func mustLogin(login string) string {
	if login == "" {
		panic(errEmpty) // want "panic should not be used in production code"
	}
	return login
}

func checkLogin(login string) error {
	if login == "" {
		return errEmpty
	}
	return nil
}

func loadAll(logins []string) {
	for _, l := range logins {
		func() {
			panic(l) // want "panic should not be used in production code"
		}()
	}
}
