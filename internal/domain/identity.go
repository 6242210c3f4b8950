package domain

import "github.com/google/uuid"

// GuestClientID is the reserved client id stored for every unauthenticated booking.
// It is not an account and is only meaningful at the storage boundary.
var GuestClientID = uuid.Nil

type identityKind int

const (
	identityUnknown identityKind = iota
	identityAccount
	identityGuest
)

// GuestContact is the contact information of a guest client
type GuestContact struct {
	Name  string
	Phone string
	Email *string
}

// ClientIdentity is either an authenticated account or a guest with contact details.
// Build it with AccountIdentity or GuestIdentity; the zero value is neither.
type ClientIdentity struct {
	kind      identityKind
	accountID uuid.UUID
	guest     GuestContact
}

// AccountIdentity creates an identity for an authenticated account
func AccountIdentity(id uuid.UUID) ClientIdentity {
	return ClientIdentity{kind: identityAccount, accountID: id}
}

// GuestIdentity creates an identity for an unauthenticated client
func GuestIdentity(contact GuestContact) ClientIdentity {
	return ClientIdentity{kind: identityGuest, guest: contact}
}

// AccountID returns the account id; ok is false for guests
func (i ClientIdentity) AccountID() (uuid.UUID, bool) {
	if i.kind != identityAccount {
		return uuid.Nil, false
	}
	return i.accountID, true
}

// Guest returns the guest contact; ok is false for accounts
func (i ClientIdentity) Guest() (GuestContact, bool) {
	if i.kind != identityGuest {
		return GuestContact{}, false
	}
	return i.guest, true
}

// IsGuest returns true for guest identities
func (i ClientIdentity) IsGuest() bool {
	return i.kind == identityGuest
}

// IsValid returns true if the identity was built by one of the constructors
func (i ClientIdentity) IsValid() bool {
	switch i.kind {
	case identityAccount:
		return i.accountID != uuid.Nil
	case identityGuest:
		return true
	default:
		return false
	}
}

// StoredClientID returns the value persisted in appointments.client_id
func (i ClientIdentity) StoredClientID() uuid.UUID {
	if i.kind == identityAccount {
		return i.accountID
	}
	return GuestClientID
}

// ActorRole distinguishes clients from business-side users
type ActorRole string

const (
	RoleClient   ActorRole = "client"
	RoleBusiness ActorRole = "business"
)

// Actor is the caller of a lifecycle operation, passed explicitly by the transport layer
type Actor struct {
	AccountID  uuid.UUID
	Role       ActorRole
	BusinessID uuid.UUID // set for RoleBusiness
}

// IsBusinessOf reports whether the actor acts on behalf of the given business
func (a Actor) IsBusinessOf(businessID uuid.UUID) bool {
	return a.Role == RoleBusiness && a.BusinessID != uuid.Nil && a.BusinessID == businessID
}

// Identity returns the actor as a client identity
func (a Actor) Identity() ClientIdentity {
	return AccountIdentity(a.AccountID)
}
