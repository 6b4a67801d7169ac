package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	app        *firebase.App
	authClient *auth.Client
)

// Initialize sets up the Firebase Admin SDK from a service-account file.
func Initialize(credentialsFile string) error {
	opt := option.WithCredentialsFile(credentialsFile)

	var err error
	app, err = firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err = app.Auth(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	return nil
}

// GetAuthClient returns the Firebase Auth client.
func GetAuthClient() *auth.Client {
	return authClient
}

// VerifyToken verifies a Firebase ID token and returns the user's UID.
func VerifyToken(ctx context.Context, idToken string) (string, error) {
	if authClient == nil {
		return "", fmt.Errorf("firebase auth client not initialized")
	}

	token, err := authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("failed to verify ID token: %w", err)
	}

	return token.UID, nil
}

// GetUserByUID retrieves a user record by Firebase UID.
func GetUserByUID(ctx context.Context, uid string) (*auth.UserRecord, error) {
	if authClient == nil {
		return nil, fmt.Errorf("firebase auth client not initialized")
	}

	user, err := authClient.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
