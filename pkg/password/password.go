package password

import "golang.org/x/crypto/bcrypt"

// hashCost matches the cost the account records were originally created with.
const hashCost = 12

func Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), hashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Check(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
