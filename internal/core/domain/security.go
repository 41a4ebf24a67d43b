package domain

import "strings"

const (
	HeaderCSP                = "Content-Security-Policy"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderReferrerPolicy     = "Referrer-Policy"
	HeaderPermissionsPolicy  = "Permissions-Policy"
)

// SecurityPolicy is the set of response headers attached for a route class.
type SecurityPolicy struct {
	Name    string
	Headers map[string]string
}

// SecurityPolicies holds the three policy variants.
type SecurityPolicies struct {
	Basic   SecurityPolicy
	Admin   SecurityPolicy
	Payment SecurityPolicy
}

// For returns the policy for class. Admin classes get the strict policy,
// payment pages the relaxed one, everything else the basic one.
func (s SecurityPolicies) For(class RouteClass) SecurityPolicy {
	switch {
	case class.IsAdmin():
		return s.Admin
	case class == RoutePayment:
		return s.Payment
	default:
		return s.Basic
	}
}

var (
	DefaultBasicCSP = strings.Join([]string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"connect-src 'self' https://*.supabase.co wss://*.supabase.co",
		"img-src 'self' data: https:",
		"font-src 'self' data:",
	}, "; ")

	DefaultAdminCSP = strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'",
		"style-src 'self' 'unsafe-inline'",
		"connect-src 'self' https://*.supabase.co wss://*.supabase.co https://api.stripe.com https://*.stripe.com",
		"img-src 'self' data: https:",
		"font-src 'self' data:",
		"frame-src 'none'",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}, "; ")

	DefaultPaymentCSP = strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://js.stripe.com https://m.stripe.network https://*.stripe.network https://*.hcaptcha.com",
		"style-src 'self' 'unsafe-inline' https://*.stripe.com https://*.stripe.network https://*.hcaptcha.com",
		"frame-src 'self' https://js.stripe.com https://*.stripe.com https://hooks.stripe.com https://m.stripe.network https://*.stripe.network https://*.hcaptcha.com",
		"connect-src 'self' https://api.stripe.com https://*.stripe.com https://m.stripe.network https://*.stripe.network https://*.hcaptcha.com https://*.supabase.co wss://*.supabase.co",
		"img-src 'self' data: blob: https: https://*.stripe.com https://*.stripe.network",
		"font-src 'self' data: https://*.stripe.com https://*.stripe.network https://*.hcaptcha.com",
		"worker-src 'self' blob:",
		"child-src 'self' https://*.stripe.com https://m.stripe.network https://*.stripe.network https://*.hcaptcha.com",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self' https://*.stripe.com https://*.stripe.network https://*.hcaptcha.com",
	}, "; ")
)

// NewSecurityPolicies builds the three variants. Empty CSP arguments fall
// back to the defaults.
func NewSecurityPolicies(basicCSP, adminCSP, paymentCSP string) SecurityPolicies {
	if basicCSP == "" {
		basicCSP = DefaultBasicCSP
	}
	if adminCSP == "" {
		adminCSP = DefaultAdminCSP
	}
	if paymentCSP == "" {
		paymentCSP = DefaultPaymentCSP
	}
	return SecurityPolicies{
		Basic: SecurityPolicy{
			Name:    "basic",
			Headers: map[string]string{HeaderCSP: basicCSP},
		},
		Admin: SecurityPolicy{
			Name: "admin_strict",
			Headers: map[string]string{
				HeaderCSP:                adminCSP,
				HeaderFrameOptions:       "DENY",
				HeaderContentTypeOptions: "nosniff",
				HeaderReferrerPolicy:     "strict-origin-when-cross-origin",
				HeaderPermissionsPolicy:  "camera=(), microphone=(), geolocation=()",
			},
		},
		Payment: SecurityPolicy{
			Name:    "payment_relaxed",
			Headers: map[string]string{HeaderCSP: paymentCSP},
		},
	}
}
