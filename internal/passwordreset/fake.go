package passwordreset

// FakeInvalidToken is the token the fake backend rejects, so the error path
// can be exercised without an API.
const FakeInvalidToken = "invalid"

func fakeRequestResult(email string) Result {
	return Result{"detail": "Password reset e-mail has been sent.", "email": email}
}

func fakeConfirmResult(req ConfirmRequest) (Result, error) {
	if req.Token == FakeInvalidToken {
		fe := &FieldErrors{}
		fe.add("token", "Povezava za ponastavitev gesla je neveljavna ali je potekla.")
		return nil, fe
	}
	return Result{"detail": "Password has been reset with the new password."}, nil
}
