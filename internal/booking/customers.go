package booking

import (
    "context"
    "crypto/md5"
    "encoding/hex"
    "fmt"
    "strings"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ResolveCustomer maps booking-time contact info onto a customer
// record: match by email first, then by phone, create otherwise.
// Parties below the policy threshold may book with no contact at
// all; they get a deterministic placeholder email so repeat
// walk-ins under the same name collapse into one record.  Larger
// parties must leave a real email or phone.
func (s *Service) ResolveCustomer(ctx context.Context, name, email, phone string, partySize int) (*model.Customer, error) {
    name = strings.TrimSpace(name)
    email = strings.TrimSpace(email)
    phone = strings.TrimSpace(phone)
    if name == "" {
        return nil, &ValidationError{Field: "customer_name", Reason: "must not be empty"}
    }
    if email == "" && phone == "" {
        if partySize >= s.pol.GuestContactThreshold {
            return nil, &ValidationError{
                Field:  "customer_email",
                Reason: fmt.Sprintf("email or phone required for parties of %d or more", s.pol.GuestContactThreshold),
            }
        }
        email = PlaceholderEmail(name)
    }

    if email != "" {
        c, err := s.store.CustomerByEmail(ctx, email)
        if err != nil {
            return nil, err
        }
        if c != nil {
            return c, nil
        }
    }
    if phone != "" {
        c, err := s.store.CustomerByPhone(ctx, phone)
        if err != nil {
            return nil, err
        }
        if c != nil {
            return c, nil
        }
    }

    c := &model.Customer{Name: name}
    if email != "" {
        c.Email = &email
    }
    if phone != "" {
        c.Phone = &phone
    }
    if err := s.store.CreateCustomer(ctx, c); err != nil {
        return nil, err
    }
    return c, nil
}

// PlaceholderEmail derives the guest address used when a small
// party books with no contact info.  md5 is fine here: the hash
// only needs to be a stable fingerprint of the name, nothing is
// secured by it.
func PlaceholderEmail(name string) string {
    sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(name))))
    return "guest-" + hex.EncodeToString(sum[:])[:8] + "@restaurant.local"
}
