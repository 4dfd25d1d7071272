package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Email:           "priya@vsit.edu.in",
		Password:        "secret12",
		ConfirmPassword: "secret12",
		FullName:        "Priya Nair",
		RollNo:          "2024/CS/117",
		Role:            "student",
	}
}

func TestSignupAccepted(t *testing.T) {
	require.Empty(t, Check(validSignup()))
}

func TestSignupPasswordMismatchOnConfirmField(t *testing.T) {
	req := validSignup()
	req.ConfirmPassword = "different"

	violations := Check(req)
	require.Len(t, violations, 1)
	require.Equal(t, "confirm_password", violations[0].Field)
	require.Equal(t, "passwords don't match", violations[0].Message)
}

func TestSignupRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*SignupRequest)
		field   string
	}{
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *SignupRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" }, "password"},
		{"short name", func(r *SignupRequest) { r.FullName = "P" }, "full_name"},
		{"missing roll no", func(r *SignupRequest) { r.RollNo = "" }, "roll_no"},
		{"admin not selectable", func(r *SignupRequest) { r.Role = "admin" }, "role"},
		{"unknown role", func(r *SignupRequest) { r.Role = "dean" }, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSignup()
			tc.mutate(&req)

			violations := Check(req)
			require.NotEmpty(t, violations)
			require.Equal(t, tc.field, violations[0].Field)
		})
	}
}

func validProfile() StudentProfileForm {
	return StudentProfileForm{
		FullName:      "Priya Nair",
		Email:         "priya@vsit.edu.in",
		CollegeRollNo: "2024/CS/117",
		Stream:        "Computer Science",
		Year:          2,
		Skills:        "React, Node",
	}
}

func TestProfileAccepted(t *testing.T) {
	require.Empty(t, Check(validProfile()))
}

func TestProfileYearBounds(t *testing.T) {
	for _, year := range []int{0, 5, -1} {
		form := validProfile()
		form.Year = year

		violations := Check(form)
		require.NotEmpty(t, violations, "year %d should be rejected", year)
		require.Equal(t, "year", violations[0].Field)
	}
	for year := 1; year <= 4; year++ {
		form := validProfile()
		form.Year = year
		require.Empty(t, Check(form), "year %d should be accepted", year)
	}
}

func TestProfileOptionalFieldsMayBeEmpty(t *testing.T) {
	form := validProfile()
	form.Skills = ""
	form.AboutYourself = ""
	form.PastEducation = ""
	require.Empty(t, Check(form))
}
